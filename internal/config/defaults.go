package config

// DefaultTrackersURL is the daily tracker list btl caches.
const DefaultTrackersURL = "https://raw.githubusercontent.com/ngosang/trackerslist/master/trackers_best_ip.txt"

const (
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)
