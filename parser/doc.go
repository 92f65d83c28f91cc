// Package parser reads Endless Sky data files into the records of package model.
//
// The format nests by indentation (one tab or four spaces per level) and
// lets fields appear in any order inside a record:
//
//	galaxy "Milky Way"
//		pos -27 32.8
//		sprite ui/galaxy
//
// Parse is strict and reports the first problem as an *Error carrying a
// source position. ParseBestEffort keeps every record parsed before the
// first problem and silently drops the rest. ParseDocument is the strict
// form that also reports where each record sits in the source.
//
// A record is committed once its header tag matches: errors after that
// point are never retried as a different record kind.
package parser
