/*
Package logicsim is the simulation core of an interactive digital logic
circuit editor.

Components carry variable-width bit-vector signals on their pins; a
circuit is a graph of components connected output-pin to input-pin by
width-checked wires. Same-label tunnels connect without drawn wires.
Each propagation pass evaluates the combinational components in
topological order, with feedback loops broken at clocked elements
(registers), whose state only advances on an explicit clock tick.

The engine exposes mutation, query and property-edit interfaces for a
host UI; it does no rendering or input handling itself. The built-in
component kinds live in the complib package.
*/
package logicsim
