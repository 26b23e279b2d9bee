// Package deps checks that the external programs btl launches are installed.
package deps
