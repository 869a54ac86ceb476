// Package tree prints a dependency graph as an indented text tree.
//
// Each line has the form
//
//	<2*depth spaces> ├── <name> - (<homepage>)
//
// and is coloured by depth parity. Packages from the standard-library family
// are dimmed.
package tree
