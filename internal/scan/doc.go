// Package scan collects match signals from mod folders on disk.
//
// A scan walks one folder under a budget (file count, bytes per file, name
// count), tokenizes folder and file names, and pulls hashes and structural
// tokens out of INI files. Budgets keep pathological folders cheap: quick
// scans look at a handful of files, full scans dig deeper when quick
// matching was inconclusive. Results are cached per folder and modification
// time so repeated matching of an unchanged folder costs one stat call.
package scan
