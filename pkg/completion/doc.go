/*
Package completion provides the content of command branches: the literal or
generated tokens a branch accepts, which double as tab-completion suggestions.

A branch's content is a list of Components. Static components hold fixed
tokens; Func components compute them per request; Assets are named, reusable
generators that can additionally check and convert raw input into typed values.

Non-refreshing assets generate their values once and memoize them; concurrent
first loads share a single generation.
*/
package completion
