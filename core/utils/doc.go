// Package utils provides small conversion helpers for loosely typed upstream JSON.
//
// Platform APIs are inconsistent about id types (the same title id can arrive as
// a string or a number), and identity keys must compare equal either way.
package utils
