// Package logtail follows a growing text log.
//
// A Tailer is pull-based: the owner calls Next in its own loop and sleeps
// between attempts when no complete line is available. The first Next seeks
// to the end of the file, so history is only ever seen through the one-time
// ReadExisting scan at startup.
//
// Truncation and rotation are not handled. A Watcher can report that the file
// was removed or renamed (ErrLogGone) and otherwise only shortens the wait
// between polls.
package logtail
