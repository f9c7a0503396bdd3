// Package cp models a boolean constraint satisfaction problem: an arena of
// 0/1 decision variables, linear constraints over literals, and the contract
// with the backend that searches for an assignment.
package cp
