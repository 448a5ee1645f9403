// Package viz renders approximations in the terminal.
//
// [Model] is a Bubble Tea program that integrates an initial-value problem
// one step at a time and plots the numeric solution against the exact one.
// [Chart] draws static curves with asciigraph for command output.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from the initial condition
//	M     - Switch integration method and restart
//	+/-   - More/fewer steps per frame
//	Q     - Quit
package viz
