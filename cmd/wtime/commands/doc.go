// Package commands defines the wtime CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - status          Show the current screen, counts and configuration
//   - welcome         Print the first-launch guide and mark it as seen
//   - contacts        List, add, update and remove emergency contacts
//   - notes           List, add, update and remove secure notes
//   - hold unlock     Hold the stopwatch start button (Enter releases)
//   - hold panic      Hold the panic button (Enter releases)
//   - panic           Dispatch the emergency alert without the gesture
//   - clear           Delete all secure data
//
// # Implementation
//
// The root command loads the config, builds the dependency graph and loads
// the secure store before any subcommand runs; the graph is closed after the
// subcommand returns. Output goes to the command's writer so tests can
// capture it.
package commands
