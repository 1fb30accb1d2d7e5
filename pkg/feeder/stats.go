package feeder

// Stats are the per-run counters. The loop is the only writer; they are read
// for the final summary after Run returns.
type Stats struct {
	// FramesCaptured counts frames successfully acquired from the camera.
	FramesCaptured int

	// UploadsSucceeded counts frames acknowledged by the server.
	UploadsSucceeded int

	// UploadsFailed counts frames that never made it: failed captures,
	// transport errors and non-success HTTP statuses.
	UploadsFailed int
}
