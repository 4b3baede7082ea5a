package domain

// ServerInfo is the service metadata returned by the API root endpoint.
type ServerInfo struct {
	Message string            `json:"message"`
	Routes  map[string]string `json:"routes"`
}

// Location is the geolocation block of the network report. All fields fall
// back to "Local Network" or "Unknown" on the server side, so they are
// always plain strings.
type Location struct {
	Country  string `json:"country"`
	City     string `json:"city"`
	ISP      string `json:"isp"`
	Region   string `json:"region,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// NetworkServer describes the server half of the network report.
type NetworkServer struct {
	Hostname  string `json:"hostname"`
	IP        string `json:"ip"`
	IsPrivate bool   `json:"is_private"`
	Docker    bool   `json:"docker"`
}

// NetworkClient describes the client half of the network report.
type NetworkClient struct {
	IP        string    `json:"ip"`
	PublicIP  string    `json:"public_ip,omitempty"`
	IsPrivate bool      `json:"is_private"`
	Location  *Location `json:"location,omitempty"`
}

// NetworkInfo is the full network endpoint response. Error carries the
// server's degraded-mode message when it could not assemble the report.
type NetworkInfo struct {
	Server NetworkServer `json:"server"`
	Client NetworkClient `json:"client"`
	Error  string        `json:"error,omitempty"`
}
