package inpaintblocks

import "github.com/pkg/errors"

var (
	// ErrInvalidMode is returned for filter modes other
	// than median and average.
	ErrInvalidMode = errors.New("invalid filter mode")

	// ErrShapeMismatch is returned when images and masks
	// (or two batches in general) disagree in shape.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidSelector is returned for an unknown
	// inpainter or mask name.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrNonSquareGrid is returned by operations that
	// only make sense for square label grids.
	ErrNonSquareGrid = errors.New("label grid is not square")

	// ErrInvalidGeometry is returned by Geometry.Validate.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidLabel is returned for labels outside the
	// label grid.
	ErrInvalidLabel = errors.New("label out of range")

	// ErrInvalidProbability is returned for occlusion
	// probabilities outside [0, 1].
	ErrInvalidProbability = errors.New("probability out of range")
)
