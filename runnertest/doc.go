// Package runnertest provides test fixtures for cloptune.Runner
// integrations: a scriptable fake runner and a behavioral compliance
// suite for real Runner implementations.
package runnertest
