// Package domain contains the core business entities of the drinks menu:
// drinks, their recipes, and the rules for how they may be represented
// and validated. It is independent of any storage or delivery mechanism.
package domain
