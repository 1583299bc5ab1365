// Package audio plays banner sounds. It uses the beep library to decode WAV,
// OGG and MP3 files, caches decoded sounds and picks a sound per message type.
package audio
