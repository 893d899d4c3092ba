// Package input turns raw command lines into token lists.
package input
