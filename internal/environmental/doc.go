// Package environmental stores and serves temperature and humidity
// readings per facility zone. Readings are synthesised on a sine-wave
// daily cycle with noise, then classified against warning and critical
// thresholds. The live monitor in the API layer re-runs the generator
// point-wise to feed the WebSocket stream.
package environmental
