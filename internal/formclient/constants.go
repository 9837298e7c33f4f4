package formclient

import "time"

// Defaults applied when Config leaves a field empty.
const (
	DefaultWorkers = 4
	DefaultTimeout = 10 * time.Second
)

// File permission constants.
const (
	logFilePermission = 0600
)

const progressWidth = 20
