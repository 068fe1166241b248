package chat

// MissingKeyReply exposes missingKeyReply to the external test package.
const MissingKeyReply = missingKeyReply
