/*
Package errors implements the error handling used throughout crosspile.

The idea is to reuse as many errors from this package as possible and define
custom package errors only when a client must be able to tell them apart.
Extensions register their own root errors with Register(code, description);
codes must be unique for the whole application.

Every error returned to a client should wrap one of the registered root
errors. Use ErrXyz.New("...") or errors.Wrap(err, "...") at the point of
creation to attach a stacktrace. Only the first wrap records the stacktrace.

Once you have an error, you can use fmt.Printf/Sprintf to get more context
	%s is just the error message
	%+v is the full stack trace
*/
package errors
