// Package config loads the runtime configuration file kite.json.
//
// A kite.json looks like:
//
//	{
//	  "debug": true,
//	  "logLevel": "debug",
//	  "frameIntervalMs": 16,
//	  "maxFlushFrames": 64,
//	  "metrics": {"enabled": true, "namespace": "kite"},
//	  "tracing": {"enabled": false, "tracerName": "kite"}
//	}
//
// Missing fields take the defaults returned by New.
package config
