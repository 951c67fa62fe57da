package model

// Package model defines the core-owned catalog data structures: media type
// enums, per-rendition format options, and the analyzed video catalog.
// Structures are built once per analyze request and are immutable afterwards.
