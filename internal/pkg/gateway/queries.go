package gateway

// GraphQL documents for the remote flight API.

const querySearchFlights = `
query SearchFlights($origin: String!, $destination: String!, $departureDate: String!, $passengers: Int) {
  searchFlights(origin: $origin, destination: $destination, departureDate: $departureDate, passengers: $passengers) {
    id
    flightNumber
    airline
    origin
    destination
    departureTime
    arrivalTime
    durationMinutes
    price
    stops
    aircraftType
    availableSeats
  }
}`

const queryGetFlight = `
query GetFlight($id: ID!) {
  flight(id: $id) {
    id
    flightNumber
    airline
    origin
    destination
    departureTime
    arrivalTime
    durationMinutes
    price
    stops
    aircraftType
    availableSeats
  }
}`

const mutationCreateBooking = `
mutation CreateBooking($input: BookingInput!) {
  createBooking(input: $input) {
    success
    message
    booking {
      id
      bookingReference
      passengerName
      passengerEmail
      passengerPhone
      bookingDate
      status
      flight {
        id
        flightNumber
        airline
        origin
        destination
        departureTime
        arrivalTime
        price
      }
    }
  }
}`

const queryGetBooking = `
query GetBooking($bookingReference: String!) {
  booking(bookingReference: $bookingReference) {
    id
    bookingReference
    passengerName
    passengerEmail
    passengerPhone
    bookingDate
    status
    flight {
      id
      flightNumber
      airline
      origin
      destination
      departureTime
      arrivalTime
      price
    }
  }
}`
