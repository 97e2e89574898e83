// Package rules infers classification tags for layers whose names carry no
// explicit bracket annotation.
//
// Two rule kinds exist: alias rules match the display name against a regular
// expression, folder rules match a substring of the ancestry path. Alias
// rules run first in descending priority order (ties keep declaration order),
// folder rules run in declaration order; the first match of either kind wins
// outright. Explicit tags are never touched. A broken pattern disables only
// the rule that carries it.
package rules
