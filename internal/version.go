package internal

// Version is the sgs release version reported by the CLI and the window title.
const Version = "0.4.0"
