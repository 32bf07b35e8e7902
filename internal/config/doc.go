// Package config loads vtree.yaml, the configuration of the vtree command.
//
// # Configuration File Structure
//
//	frame_interval: 16ms
//	metrics_addr: localhost:9090
//	log_level: info
//	scenarios:
//	  - name: keyed-shuffle
//	    list_size: 1000
//	    iterations: 100
//	    mutation: shuffle   # shuffle, append, remove, replace or text
//	    keyed: true
//	    seed: 1
//
// Missing values are defaulted and the result is validated before Load
// returns.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, err := cfg.Scenario("keyed-shuffle")
package config
