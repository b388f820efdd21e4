package model

// Anonymous is the principal of an unauthenticated request. It fails every
// permission predicate; reads that allow anonymous access bypass the
// resolver entirely.
const Anonymous int64 = 0
