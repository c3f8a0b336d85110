/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object saved under the
"_c:<pkg>" key. The initial value is loaded from the "conf" section of the
genesis file. Configuration is validated before every save, so a stored
configuration can always be trusted by the handlers that read it.
*/
package gconf
