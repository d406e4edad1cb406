/*
Package x contains the building blocks shared by the extensions.

Extensions implement common functionality (Handler, Decorator,
etc.) and can be combined together to construct an application.
The Authenticator defined here is the only way an extension learns
who signed a transaction.
*/
package x
