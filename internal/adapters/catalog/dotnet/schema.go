package dotnet

// releasesIndex mirrors the top level of releases-index.json.
type releasesIndex struct {
	ReleasesIndex []channelEntry `json:"releases-index"`
}

type channelEntry struct {
	ChannelVersion string `json:"channel-version"`
	LatestRelease  string `json:"latest-release"`
	LatestSDK      string `json:"latest-sdk"`
	ReleaseType    string `json:"release-type"`
	SupportPhase   string `json:"support-phase"`
	EOLDate        string `json:"eol-date"`
}
