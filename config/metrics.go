package config

import "fmt"

// MetricsConfig selects the solve-event sinks. Both backends may be enabled
// at once; events then fan out to each.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    int    `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusPort == 0 {
		c.PrometheusPort = 2112
	}
}

func (c MetricsConfig) Validate() error {
	if c.PrometheusEnabled && c.PrometheusPort <= 0 {
		return fmt.Errorf("metrics: prometheus_port is required when prometheus is enabled")
	}
	if c.InfluxEnabled && c.InfluxURL == "" {
		return fmt.Errorf("metrics: influx_url is required when influx is enabled")
	}
	return nil
}
