/*
Package queue provides the first-in first-out queue where the nodes
of a growing tree wait to be developed.

It is backed only by the process memory and is meant to be used from
a single goroutine.
*/
package queue
