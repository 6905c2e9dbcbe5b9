// internal/compare/arp.go
package compare

import (
	"fmt"
	"strings"

	"github.com/infinisean/papub/internal/textparse"
)

const CommandArp = "show_arp_all"

var arpHeaderWords = []string{"interface", "ip address", "hw address", "status"}

// ArpEntry is one row of "show arp all"
type ArpEntry struct {
	Interface string `json:"interface"`
	IP        string `json:"ip"`
	MAC       string `json:"mac"`
	Status    string `json:"status"`
}

// ArpRecord is the parsed ARP table
type ArpRecord struct {
	Entries    []ArpEntry
	IPs        Set
	MACs       Set
	Interfaces Set
	Total      int
	Active     int
}

func (r *ArpRecord) Command() string { return CommandArp }
func (r *ArpRecord) Len() int        { return len(r.Entries) }

func newArpRecord() *ArpRecord {
	return &ArpRecord{
		Entries:    []ArpEntry{},
		IPs:        Set{},
		MACs:       Set{},
		Interfaces: Set{},
	}
}

// ParseArp extracts ARP entries from raw "show arp all" output.
// A row needs an IPv4 address, a MAC address and at least three tokens.
func ParseArp(raw string) *ArpRecord {
	rec := newArpRecord()

	for _, line := range textparse.Lines(raw) {
		if textparse.Skip(line, arpHeaderWords) {
			continue
		}

		ip, ok := textparse.FindIPv4(line)
		if !ok {
			continue
		}
		mac, ok := textparse.FindMAC(line)
		if !ok {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}

		entry := ArpEntry{
			Interface: fields[0],
			IP:        ip,
			MAC:       mac,
			Status:    "active",
		}
		if entry.Interface == ip {
			entry.Interface = "unknown"
		}
		if len(fields) > 3 {
			entry.Status = strings.ToLower(fields[len(fields)-1])
		}

		rec.Entries = append(rec.Entries, entry)
		rec.IPs.Add(entry.IP)
		rec.MACs.Add(entry.MAC)
		rec.Interfaces.Add(entry.Interface)
		if entry.Status == "active" {
			rec.Active++
		}
	}

	rec.Total = len(rec.Entries)
	return rec
}

// ArpComparator flags lost neighbors between two ARP tables
type ArpComparator struct {
	limits ArpThresholds
}

// NewArpComparator creates an ARP comparator with the given limits
func NewArpComparator(limits ArpThresholds) *ArpComparator {
	return &ArpComparator{limits: limits}
}

func (c *ArpComparator) Command() string { return CommandArp }
func (c *ArpComparator) Name() string    { return "ARP Table" }

func (c *ArpComparator) Parse(raw string) Record { return ParseArp(raw) }

func asArp(r Record) *ArpRecord {
	if rec, ok := r.(*ArpRecord); ok && rec != nil {
		return rec
	}
	return newArpRecord()
}

// Compare reports ERROR when any address vanished or the table shrank past
// the drop limit, SUCCESS when nothing vanished and the count is within
// tolerance, and WARNING otherwise.
func (c *ArpComparator) Compare(pre, post Record) Result {
	p, q := asArp(pre), asArp(post)

	missingIPs := p.IPs.Minus(q.IPs)
	newIPs := q.IPs.Minus(p.IPs)
	missingMACs := p.MACs.Minus(q.MACs)
	newMACs := q.MACs.Minus(p.MACs)
	countChange := q.Total - p.Total

	metrics := map[string]float64{
		"pre_count":          float64(p.Total),
		"post_count":         float64(q.Total),
		"count_change":       float64(countChange),
		"missing_ips_count":  float64(len(missingIPs)),
		"new_ips_count":      float64(len(newIPs)),
		"missing_macs_count": float64(len(missingMACs)),
		"new_macs_count":     float64(len(newMACs)),
	}
	details := map[string]any{
		"missing_ips":  missingIPs,
		"new_ips":      newIPs,
		"missing_macs": missingMACs,
		"new_macs":     newMACs,
	}

	lost := len(missingIPs) > 0 || len(missingMACs) > 0

	switch {
	case lost || countChange < -c.limits.ErrorDrop:
		var parts []string
		if countChange < 0 {
			parts = append(parts, fmt.Sprintf("%d fewer ARP entries", -countChange))
		}
		if len(missingIPs) > 0 {
			parts = append(parts, fmt.Sprintf("IPs %s no longer responding", limitList(missingIPs, 5)))
		}
		if len(missingMACs) > 0 && len(missingIPs) == 0 {
			parts = append(parts, fmt.Sprintf("MACs %s no longer present", limitList(missingMACs, 5)))
		}
		return NewResult(StatusError, strings.Join(parts, " - "), metrics, details)

	case absInt(countChange) <= c.limits.SuccessTolerance:
		return NewResult(StatusSuccess, fmt.Sprintf("ARP table unchanged (%d entries)", q.Total), metrics, details)

	default:
		var parts []string
		if countChange > 0 {
			parts = append(parts, fmt.Sprintf("%d new ARP entries", countChange))
		} else if countChange < 0 {
			parts = append(parts, fmt.Sprintf("%d fewer ARP entries", -countChange))
		}
		if len(newIPs) > 0 {
			parts = append(parts, fmt.Sprintf("new IPs: %s", limitList(newIPs, 3)))
		}
		return NewResult(StatusWarning, strings.Join(parts, " - "), metrics, details)
	}
}
