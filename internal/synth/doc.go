// Package synth provides interfaces and implementations for producing audio
// artifacts from text descriptions. It abstracts the synthesis routine behind
// a Producer boundary, allowing the task layer to schedule generation work
// without coupling to how the audio is actually rendered.
package synth
