package zmq

// TrimReply exposes trimReply for tests.
var TrimReply = trimReply
