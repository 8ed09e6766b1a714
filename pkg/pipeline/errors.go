package pipeline

import "errors"

var (
	// ErrMediaLoad is returned when the media source cannot be decoded.
	ErrMediaLoad = errors.New("pipeline: media source cannot be decoded")

	// ErrSeekTimeout is returned when a seek does not complete within
	// the configured bound.
	ErrSeekTimeout = errors.New("pipeline: seek did not complete in time")

	// ErrFrameDecode is returned when a sampled pixel buffer is unreadable.
	ErrFrameDecode = errors.New("pipeline: frame pixel buffer unreadable")

	// ErrReferenceLoad is returned when the fingerprint image fails to load.
	ErrReferenceLoad = errors.New("pipeline: reference image failed to load")

	// ErrAnalysisCancelled is returned when the caller aborts a run.
	ErrAnalysisCancelled = errors.New("pipeline: analysis cancelled")

	// ErrAnalysisInProgress is returned when a run is started on an
	// analyzer that already has a run in flight.
	ErrAnalysisInProgress = errors.New("pipeline: analysis already in progress")
)
