/*
 * doc.go, part of gorex.
 *
 * Copyright 2024 The goRex Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*
Package rxf implements the replica exchange format, a simple compressed
archive for the history of a replica-exchange simulation: which state each
replica occupied in every iteration, the reduced potential of each replica
at every state and, optionally, the coordinates of each replica. As goChem's
STF, it aims to be trivial to read and write from other languages.

	**File Layout**

An RXF file is compressed with z-standard (zstd), or with gzip if its name
ends in ".gz". It may only contain ASCII symbols.

The file starts with a header. Each line of the header is a pair
key=value. The key "prec" gives the number of decimal places kept for the
coordinates (an integer larger than 0; 3 if absent). The header ends with a
line starting with the characters "**" followed by 3 integers separated by
spaces: the number of replicas, the number of states, and the number of
atoms per replica (which may be 0). For instance:

	prec=3
	temperatures=300,320,342
	** 3 3 22

After the header, each iteration is stored as:

A line starting with "S", followed by the index (from 0) of the state
occupied by each replica.

One line per replica starting with "E", followed by the reduced potential of
the replica at each state.

If the number of atoms is not 0, one line per atom per replica, with the
x, y and z coordinates in Angstrom, multiplied by 10 to the power of
prec, and rounded to an integer. The coordinates of replica 0 come first.

A line containing only "*", marking the end of the iteration.

For example, one iteration of an archive with 2 replicas, 2 states and 1
atom, with prec=3:

	S 1 0
	E 10.5 11.25
	E 9.75 12
	1520 -230 18
	1499 -301 35
	*
*/
package rxf
