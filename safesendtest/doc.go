/*
Package safesendtest provides mocks and helpers shared by tests
across all packages of this project.
*/
package safesendtest
