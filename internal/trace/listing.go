package trace

import (
	"fmt"
	"io"
	"strings"

	interp "github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/set"
)

// Listing is a static disassembly of a ROM. Code is found by following the
// execution flow from the program start, everything not reached is data.
type Listing struct {
	rom     []byte
	code    set.Set[uint16] // addresses of instruction starts
	labels  map[uint16]string
	toParse []uint16
	added   set.Set[uint16]
}

// NewListing disassembles the ROM that gets loaded at the program start address.
func NewListing(rom []byte) *Listing {
	l := &Listing{
		rom:    rom,
		code:   set.New[uint16](),
		labels: map[uint16]string{},
		added:  set.New[uint16](),
	}
	l.labels[interp.ProgramStart] = "Start"
	l.addAddressToParse(interp.ProgramStart)
	l.followExecutionFlow()
	return l
}

// IsCode returns whether an instruction starts at the given address.
func (l *Listing) IsCode(address uint16) bool {
	return l.code.Contains(address)
}

// Label returns the label of an address.
func (l *Listing) Label(address uint16) (string, bool) {
	label, ok := l.labels[address]
	return label, ok
}

// CodeAddresses returns the sorted start addresses of all found instructions.
func (l *Listing) CodeAddresses() []uint16 {
	return set.Sorted(l.code)
}

// WriteTo writes the listing as assembly text. Labels of addresses that are
// not the start of a written line, like jumps into the middle of an
// instruction, are written as equates first.
func (l *Listing) WriteTo(w io.Writer) (int64, error) {
	var written int64
	write := func(format string, args ...any) error {
		n, err := fmt.Fprintf(w, format, args...)
		written += int64(n)
		return err
	}

	lines := l.lineStarts()
	for _, address := range set.Sorted(l.labelAddresses()) {
		if lines.Contains(address) {
			continue
		}
		if err := write("%s = $%03X\n", l.labels[address], address); err != nil {
			return written, fmt.Errorf("writing equate: %w", err)
		}
	}

	for _, address := range set.Sorted(lines) {
		if label, ok := l.labels[address]; ok {
			if err := write("%s:\n", label); err != nil {
				return written, fmt.Errorf("writing label: %w", err)
			}
		}

		if l.code.Contains(address) {
			word, _ := l.word(address)
			if err := write("  %-20s ; $%03X %04X\n", Format(word), address, word); err != nil {
				return written, fmt.Errorf("writing code: %w", err)
			}
			continue
		}

		if err := write("  .byte $%02X%15s ; $%03X\n", l.rom[address-interp.ProgramStart], "", address); err != nil {
			return written, fmt.Errorf("writing data: %w", err)
		}
	}
	return written, nil
}

// lineStarts returns the addresses that start a line of the listing. An
// instruction covers two bytes, an instruction overlapping with it is cut.
func (l *Listing) lineStarts() set.Set[uint16] {
	lines := set.New[uint16]()
	end := interp.ProgramStart + uint16(len(l.rom))
	for address := uint16(interp.ProgramStart); address < end; {
		lines.Add(address)
		if l.code.Contains(address) {
			address += 2
		} else {
			address++
		}
	}
	return lines
}

// labelAddresses returns all addresses that have a label.
func (l *Listing) labelAddresses() set.Set[uint16] {
	addresses := set.New[uint16]()
	for address := range l.labels {
		addresses.Add(address)
	}
	return addresses
}

// followExecutionFlow decodes all queued addresses and queues the addresses
// that the instruction can continue execution at.
func (l *Listing) followExecutionFlow() {
	for len(l.toParse) > 0 {
		address := l.toParse[0]
		l.toParse = l.toParse[1:]

		word, ok := l.word(address)
		if !ok {
			continue
		}
		ins := interp.Decode(word)
		if ins.Kind == interp.KindUnknown {
			continue // unknown instructions are treated as start of data
		}
		l.code.Add(address)
		next := address + 2

		switch ins.Kind {
		case interp.KindRet, interp.KindJpV0:
			// the destination is only known at runtime

		case interp.KindJp:
			l.addBranchDestination(ins.Addr, "_label")

		case interp.KindCall:
			l.addBranchDestination(ins.Addr, "_func")
			l.addAddressToParse(next)

		case interp.KindSeByte, interp.KindSneByte, interp.KindSeReg, interp.KindSneReg,
			interp.KindSkp, interp.KindSknp:
			l.addAddressToParse(next)
			l.addAddressToParse(next + 2)

		case interp.KindLdI:
			if l.inROM(ins.Addr) {
				if _, ok := l.labels[ins.Addr]; !ok {
					l.labels[ins.Addr] = fmt.Sprintf("_data_%03X", ins.Addr)
				}
			}
			l.addAddressToParse(next)

		default:
			l.addAddressToParse(next)
		}
	}
}

// addBranchDestination labels a jump or call target and queues it for parsing.
func (l *Listing) addBranchDestination(address uint16, prefix string) {
	if !l.inROM(address) {
		return
	}
	if label, ok := l.labels[address]; !ok || strings.HasPrefix(label, "_data") {
		l.labels[address] = fmt.Sprintf("%s_%03X", prefix, address)
	}
	l.addAddressToParse(address)
}

// addAddressToParse queues an address if it has not been queued before.
func (l *Listing) addAddressToParse(address uint16) {
	if !l.inROM(address) || l.added.Contains(address) {
		return
	}
	l.added.Add(address)
	l.toParse = append(l.toParse, address)
}

// inROM returns whether the address is inside the loaded ROM.
func (l *Listing) inROM(address uint16) bool {
	return address >= interp.ProgramStart && int(address-interp.ProgramStart) < len(l.rom)
}

// word reads the instruction word at the address, it fails if the second
// byte is outside the ROM.
func (l *Listing) word(address uint16) (uint16, bool) {
	offset := int(address - interp.ProgramStart)
	if address < interp.ProgramStart || offset+1 >= len(l.rom) {
		return 0, false
	}
	return uint16(l.rom[offset])<<8 | uint16(l.rom[offset+1]), true
}
