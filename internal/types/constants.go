package types

// ContextUserKey is where the auth middleware stores the caller identity.
const ContextUserKey = "user"
