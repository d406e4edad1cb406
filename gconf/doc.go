/*
Package gconf stores per package configuration singletons.

A configuration is loaded from the genesis "conf" section and saved under
a single key for its package. It can later be replaced by a message signed
by the configuration owner.
*/
package gconf
