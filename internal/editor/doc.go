// Package editor runs the interactive, menu-driven dialogue editing session.
//
// A Session owns one in-memory collection and the name of the file it was
// loaded from or last saved to. Each menu choice maps to a single action:
// start over, load, add a speaker, add a line, view, save, save as, exit.
// Field prompts loop until the input parses, so the collection only ever
// receives validated values. End of input ends the session the same way the
// exit choice does.
package editor
