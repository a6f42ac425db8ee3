package constant

// ServiceName namespaces prometheus metrics.
const ServiceName = "itinerarybackend"
