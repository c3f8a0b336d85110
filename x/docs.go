/*
Package x contains the helpers shared by all extensions.

Extensions implement the functionality of the application (Handler,
Initializer and query registration) and are combined together in the
command line application. The ledger extension keeps token balances and
the splitter extension pays the balance of a pool out to its payees.

Extensions must only depend on the Authenticator interface defined here,
never on a concrete signature scheme.
*/
package x
