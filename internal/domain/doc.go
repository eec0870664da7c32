// Package domain defines the core business entities of the TwainCards
// learning platform and the rules that keep them valid.
package domain
