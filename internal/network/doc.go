// Package network builds the enterprise repository network report: every
// repository of every organization with its last commit author, branch
// count, forks and forks of forks.
package network
