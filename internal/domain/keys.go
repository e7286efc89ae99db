package domain

// DefaultKeyPrefix namespaces every storage key written by the service.
const DefaultKeyPrefix = "tagrec:"
