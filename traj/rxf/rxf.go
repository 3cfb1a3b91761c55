/*
 * rxf.go, part of gorex.
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

package rxf

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	rex "github.com/rmera/gorex"
	v3 "github.com/rmera/gorex/v3"
)

// DefaultPrec is the number of decimal places kept for coordinates
// when the header doesn't say otherwise.
const DefaultPrec = 3

func gzipped(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".gz")
}

//Write!

// RxfW writes replica-exchange archives.
type RxfW struct {
	f         *os.File
	h         io.WriteCloser
	buf       *bufio.Writer
	nreplicas int
	nstates   int
	natoms    int
	filename  string
	writeable bool
	prec      int
	mult      float64
}

// NewWriter creates the file name and writes the archive header to it. The
// archive is gzip-compressed if name ends in ".gz", zstd-compressed otherwise.
// natoms can be 0 for archives without coordinates. The header keys
// may not contain "=" nor new lines, and the values may not contain new lines.
func NewWriter(name string, nreplicas, nstates, natoms int, header map[string]string) (*RxfW, error) {
	if nreplicas < 1 || nstates < 2 || natoms < 0 {
		return nil, &Error{message: fmt.Sprintf("invalid dimensions: %d replicas, %d states, %d atoms", nreplicas, nstates, natoms), filename: name, deco: []string{"NewWriter"}, critical: true, err: rex.ErrMalformed}
	}
	S := &RxfW{nreplicas: nreplicas, nstates: nstates, natoms: natoms, filename: name, prec: DefaultPrec}
	h := make(map[string]string, len(header)+1)
	for k, v := range header {
		if k == "" || strings.ContainsAny(k, "=\n") || strings.Contains(v, "\n") || strings.HasPrefix(k, "*") {
			return nil, &Error{message: fmt.Sprintf("invalid header entry %q", k), filename: name, deco: []string{"NewWriter"}, critical: true, err: rex.ErrMalformed}
		}
		h[k] = v
	}
	if p, ok := h["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err == nil && prec > 0 {
			S.prec = prec
		} else {
			log.Printf("Invalid precision for archive %s. Will use the default", name)
		}
	}
	h["prec"] = strconv.Itoa(S.prec)
	S.mult = math.Pow(10, float64(S.prec))
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, &Error{message: err.Error(), filename: name, deco: []string{"NewWriter"}, critical: true}
	}
	if gzipped(name) {
		S.h, err = gzip.NewWriterLevel(S.f, gzip.BestCompression)
	} else {
		S.h, err = zstd.NewWriter(S.f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	}
	if err != nil {
		S.f.Close()
		return nil, &Error{message: "can't start compression: " + err.Error(), filename: name, deco: []string{"NewWriter"}, critical: true}
	}
	S.buf = bufio.NewWriter(S.h)
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(S.buf, "%s=%s\n", k, h[k])
	}
	fmt.Fprintf(S.buf, "** %d %d %d\n", nreplicas, nstates, natoms)
	S.writeable = true
	return S, nil
}

// Len returns the number of atoms per replica.
func (S *RxfW) Len() int {
	return S.natoms
}

func (S *RxfW) check(F *rex.Frame) error {
	if F == nil {
		return &Error{message: NilFrame, filename: S.filename, deco: []string{"WNext"}, critical: true}
	}
	if len(F.States) != S.nreplicas || len(F.Energies) != S.nreplicas {
		return &Error{message: fmt.Sprintf("frame has %d states and %d energy rows, expected %d", len(F.States), len(F.Energies), S.nreplicas), filename: S.filename, deco: []string{"WNext"}, critical: true, err: rex.ErrMalformed}
	}
	for r, s := range F.States {
		if s < 0 || s >= S.nstates {
			return &Error{message: fmt.Sprintf("state %d of replica %d out of range", s, r), filename: S.filename, deco: []string{"WNext"}, critical: true, err: rex.ErrMalformed}
		}
		if len(F.Energies[r]) != S.nstates {
			return &Error{message: fmt.Sprintf("replica %d has %d energies, expected %d", r, len(F.Energies[r]), S.nstates), filename: S.filename, deco: []string{"WNext"}, critical: true, err: rex.ErrMalformed}
		}
	}
	if S.natoms == 0 {
		return nil
	}
	if len(F.Positions) != S.nreplicas {
		return &Error{message: fmt.Sprintf("frame has positions for %d replicas, expected %d", len(F.Positions), S.nreplicas), filename: S.filename, deco: []string{"WNext"}, critical: true, err: rex.ErrMalformed}
	}
	for r, c := range F.Positions {
		if c == nil || c.NVecs() != S.natoms {
			return &Error{message: fmt.Sprintf("wrong coordinates for replica %d", r), filename: S.filename, deco: []string{"WNext"}, critical: true, err: rex.ErrMalformed}
		}
	}
	return nil
}

// WNext writes the iteration F to the archive.
func (S *RxfW) WNext(F *rex.Frame) error {
	if !S.writeable {
		return &Error{message: ArchUnIniWrite, filename: S.filename, deco: []string{"WNext"}, critical: true}
	}
	if err := S.check(F); err != nil {
		return err
	}
	S.buf.WriteString("S")
	for _, s := range F.States {
		S.buf.WriteByte(' ')
		S.buf.WriteString(strconv.Itoa(s))
	}
	S.buf.WriteByte('\n')
	for _, e := range F.Energies {
		S.buf.WriteString("E")
		for _, v := range e {
			S.buf.WriteByte(' ')
			S.buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		S.buf.WriteByte('\n')
	}
	if S.natoms > 0 {
		var temp [3]int
		for _, c := range F.Positions {
			for i := 0; i < S.natoms; i++ {
				S.buf.WriteString(coordsEncode(c.VecView(i), temp, S.mult))
			}
		}
	}
	_, err := S.buf.WriteString("*\n")
	if err != nil {
		return &Error{message: err.Error(), filename: S.filename, deco: []string{"WNext"}, critical: true}
	}
	return nil
}

// Close flushes and closes the archive. It can not be used after this call.
func (S *RxfW) Close() error {
	if S == nil || !S.writeable {
		return nil
	}
	S.writeable = false
	err := S.buf.Flush()
	if err2 := S.h.Close(); err == nil {
		err = err2
	}
	if err2 := S.f.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return &Error{message: err.Error(), filename: S.filename, deco: []string{"Close"}, critical: true}
	}
	return nil
}

func coordsEncode(c *v3.Matrix, temp [3]int, mult float64) string {
	for i := range temp {
		temp[i] = int(math.RoundToEven(c.At(0, i) * mult))
	}
	return fmt.Sprintf("%d %d %d\n", temp[0], temp[1], temp[2])
}

//Read!

// RxfR reads replica-exchange archives. It implements rex.Archive.
type RxfR struct {
	f         *os.File
	dec       io.ReadCloser
	h         *bufio.Reader
	nreplicas int
	nstates   int
	natoms    int
	filename  string
	prec      int
	mult      float64
	iteration int
	readable  bool
}

// zstdql wraps the zstd decoder, whose Close method returns nothing,
// so it implements io.ReadCloser.
type zstdql struct {
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.Decoder.Close()
	return nil
}

// New opens an archive for reading, and returns a pointer
// to the handle, a map with the header and error or nil.
func New(name string) (*RxfR, map[string]string, error) {
	S := &RxfR{filename: name, prec: DefaultPrec}
	var err error
	S.f, err = os.Open(name)
	if err != nil {
		return nil, nil, &Error{message: UnableToOpen + ": " + err.Error(), filename: name, deco: []string{"New"}, critical: true}
	}
	in := bufio.NewReader(S.f)
	if gzipped(name) {
		S.dec, err = gzip.NewReader(in)
	} else {
		var z *zstd.Decoder
		z, err = zstd.NewReader(in)
		if err == nil {
			S.dec = zstdql{z}
		}
	}
	if err != nil {
		S.f.Close()
		return nil, nil, &Error{message: "can't start decompression: " + err.Error(), filename: name, deco: []string{"New"}, critical: true}
	}
	S.h = bufio.NewReader(S.dec)
	m, err := S.readHeader()
	if err != nil {
		S.dec.Close()
		S.f.Close()
		return nil, nil, errDecorate(err, "New")
	}
	if p, ok := m["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err == nil && prec > 0 {
			S.prec = prec
		} else {
			log.Printf("Invalid precision for archive %s. Will assume the default", name)
		}
	}
	S.mult = math.Pow(10, float64(S.prec))
	S.readable = true
	return S, m, nil
}

func (S *RxfR) readHeader() (map[string]string, error) {
	m := make(map[string]string)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			return nil, &Error{message: "can't read header: " + err.Error(), filename: S.filename, deco: []string{"readHeader"}, critical: true, err: rex.ErrMalformed}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			dims := strings.Fields(strings.TrimPrefix(str, "**"))
			if len(dims) != 3 {
				return nil, &Error{message: fmt.Sprintf("can't read dimensions from '%s'", str), filename: S.filename, deco: []string{"readHeader"}, critical: true, err: rex.ErrMalformed}
			}
			d := make([]int, 3)
			for i, v := range dims {
				d[i], err = strconv.Atoi(v)
				if err != nil || d[i] < 0 {
					return nil, &Error{message: fmt.Sprintf("can't read dimensions from '%s'", str), filename: S.filename, deco: []string{"readHeader"}, critical: true, err: rex.ErrMalformed}
				}
			}
			S.nreplicas, S.nstates, S.natoms = d[0], d[1], d[2]
			if S.nreplicas < 1 || S.nstates < 2 {
				return nil, &Error{message: fmt.Sprintf("invalid dimensions '%s'", str), filename: S.filename, deco: []string{"readHeader"}, critical: true, err: rex.ErrMalformed}
			}
			return m, nil
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			return nil, &Error{message: fmt.Sprintf("malformed header line '%s'", str), filename: S.filename, deco: []string{"readHeader"}, critical: true, err: rex.ErrMalformed}
		}
		m[kv[0]] = kv[1]
	}
}

// Readable returns true if the handle is readable (if it is possible to call Next on it).
func (S *RxfR) Readable() bool {
	return S.readable
}

// NReplicas returns the number of replicas in the archive.
func (S *RxfR) NReplicas() int {
	return S.nreplicas
}

// NStates returns the number of thermodynamic states in the archive.
func (S *RxfR) NStates() int {
	return S.nstates
}

// Len returns the number of atoms per replica.
func (S *RxfR) Len() int {
	return S.natoms
}

// Prec returns the number of decimal places kept for the coordinates.
func (S *RxfR) Prec() int {
	return S.prec
}

// readLine reads one line, that must start with the given mark, and
// returns its remaining fields.
func (S *RxfR) readLine(mark string) ([]string, error) {
	str, err := S.h.ReadString('\n')
	if err != nil {
		return nil, S.readError("unexpected end of iteration: "+err.Error(), "readLine")
	}
	fields := strings.Fields(str)
	if len(fields) == 0 || fields[0] != mark {
		return nil, S.readError(fmt.Sprintf("expected a '%s' line, got '%s'", mark, strings.TrimSpace(str)), "readLine")
	}
	return fields[1:], nil
}

func (S *RxfR) readError(msg, caller string) *Error {
	return &Error{message: fmt.Sprintf("iteration %d: %s", S.iteration, msg), filename: S.filename, deco: []string{caller}, critical: true, err: rex.ErrMalformed}
}

func (S *RxfR) fits(F *rex.Frame) bool {
	if len(F.States) != S.nreplicas || len(F.Energies) != S.nreplicas {
		return false
	}
	for _, e := range F.Energies {
		if len(e) != S.nstates {
			return false
		}
	}
	if F.Positions == nil {
		return true
	}
	if len(F.Positions) != S.nreplicas {
		return false
	}
	for _, c := range F.Positions {
		if c == nil || c.NVecs() != S.natoms {
			return false
		}
	}
	return true
}

// Next reads the next iteration of the archive into F. If F is nil, the
// iteration is read, and checked, but discarded. If F has nil Positions,
// the coordinates are discarded. F must have been allocated with the
// dimensions of the archive (see rex.NewFrame). At the end of the archive,
// an error implementing rex.LastFrameError is returned.
func (S *RxfR) Next(F *rex.Frame) error {
	if !S.readable {
		return &Error{message: ArchUnIniRead, filename: S.filename, deco: []string{"Next"}, critical: true}
	}
	if F != nil && !S.fits(F) {
		return &Error{message: "frame doesn't match the archive dimensions", filename: S.filename, deco: []string{"Next"}, critical: true, err: rex.ErrMalformed}
	}
	str, err := S.h.ReadString('\n')
	if err == io.EOF && str == "" {
		//nothing bad happened here, the archive just ended.
		S.Close()
		return newlastFrameError(S.filename, "Next")
	}
	if err != nil && err != io.EOF {
		return &Error{message: err.Error(), filename: S.filename, deco: []string{"Next"}, critical: true}
	}
	fields := strings.Fields(str)
	if len(fields) != S.nreplicas+1 || fields[0] != "S" {
		return S.readError(fmt.Sprintf("malformed states line '%s'", strings.TrimSpace(str)), "Next")
	}
	for r, v := range fields[1:] {
		s, err := strconv.Atoi(v)
		if err != nil || s < 0 || s >= S.nstates {
			return S.readError(fmt.Sprintf("invalid state '%s' for replica %d", v, r), "Next")
		}
		if F != nil {
			F.States[r] = s
		}
	}
	for r := 0; r < S.nreplicas; r++ {
		fields, err := S.readLine("E")
		if err != nil {
			return errDecorate(err, "Next")
		}
		if len(fields) != S.nstates {
			return S.readError(fmt.Sprintf("replica %d has %d energies, expected %d", r, len(fields), S.nstates), "Next")
		}
		for i, v := range fields {
			e, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return S.readError(fmt.Sprintf("can't parse energy '%s' of replica %d", v, r), "Next")
			}
			if F != nil {
				F.Energies[r][i] = e
			}
		}
	}
	var temp [3]float64
	for r := 0; r < S.nreplicas; r++ {
		for i := 0; i < S.natoms; i++ {
			b, err := S.h.ReadString('\n')
			if err != nil {
				return S.readError("unexpected end of coordinates: "+err.Error(), "Next")
			}
			if err = coordsDecode(b, &temp, S.mult); err != nil {
				return S.readError(err.Error(), "Next")
			}
			if F == nil || F.Positions == nil {
				continue //We ignore the coordinates, but still check them for correctness.
			}
			F.Positions[r].Set(i, 0, temp[0])
			F.Positions[r].Set(i, 1, temp[1])
			F.Positions[r].Set(i, 2, temp[2])
		}
	}
	if _, err := S.readLine("*"); err != nil {
		return errDecorate(err, "Next")
	}
	S.iteration++
	return nil
}

func coordsDecode(str string, temp *[3]float64, mult float64) error {
	s := strings.Fields(str)
	if len(s) != 3 {
		return fmt.Errorf("ill formated coordinates line '%s': %d fields", strings.TrimSpace(str), len(s))
	}
	for i, v := range s {
		f, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("can't parse coordinate %d (%s): %s", i, v, err.Error())
		}
		temp[i] = float64(f) / mult
	}
	return nil
}

// Close closes the object, and marks it as unreadable.
func (S *RxfR) Close() {
	if !S.readable {
		return
	}
	S.dec.Close()
	S.f.Close()
	S.readable = false
}
