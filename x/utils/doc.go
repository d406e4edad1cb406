/*
Package utils contains decorators shared by all extensions: transaction
atomicity (Savepoint), panic recovery, request logging and result tagging.
*/
package utils
