package discovery

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/foXaCe/philips-airpurifier-coap/internal/airctrl"
	"github.com/foXaCe/philips-airpurifier-coap/pkg/aircoap"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	connectTimeout  = 3 * time.Second
	maxParallelism  = 50
	arpTablePath    = "/proc/net/arp"
	fallbackScanEnd = 100
)

// FoundDevice is one purifier located by a network scan.
type FoundDevice struct {
	Host   string
	Model  string
	Name   string
	Status aircoap.RawStatus
}

// Scanner locates purifiers on the local /24 network. The strategy follows
// a fast path and a fallback:
//  1. a UDP sweep to populate the kernel ARP table
//  2. CoAP probe of the ARP table entries
//  3. if nothing was found, probe the low DHCP range
type Scanner struct {
	probeTimeout time.Duration
	connect      func(ctx context.Context, host string) (aircoap.Client, error)
	logger       *zap.Logger
}

func NewScanner(probeTimeout time.Duration, logger *zap.Logger) *Scanner {
	return &Scanner{
		probeTimeout: probeTimeout,
		connect:      aircoap.Connect,
		logger:       logger.With(zap.String("actor", "scan")),
	}
}

// LocalIP returns the outbound IPv4 address of this machine.
func LocalIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", err
	}
	defer conn.Close()
	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", fmt.Errorf("unexpected local address %s", conn.LocalAddr())
	}
	return addr.IP.String(), nil
}

// ActiveIPsFromARP parses an ARP table in /proc/net/arp format and returns
// the addresses of complete entries (flag 0x2).
func ActiveIPsFromARP(r io.Reader) []string {
	var ips []string
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		if first {
			// header line
			first = false
			continue
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) >= 4 && parts[2] == "0x2" {
			ips = append(ips, parts[0])
		}
	}
	return ips
}

func (s *Scanner) arpIPs() []string {
	f, err := os.Open(arpTablePath)
	if err != nil {
		s.logger.Debug("could not read ARP table", zap.Error(err))
		return nil
	}
	defer f.Close()
	return ActiveIPsFromARP(f)
}

// sweep fires UDP datagrams at every host of the /24 network so the kernel
// resolves their MAC addresses into the ARP table. Replies are irrelevant.
func (s *Scanner) sweep(prefix string) {
	var wg sync.WaitGroup
	for i := 1; i < 255; i++ {
		host := fmt.Sprintf("%s.%d", prefix, i)
		for _, port := range []int{5683, 80} {
			wg.Add(1)
			go func(addr string) {
				defer wg.Done()
				conn, err := net.DialTimeout("udp", addr, 100*time.Millisecond)
				if err != nil {
					return
				}
				_, _ = conn.Write([]byte{0x00})
				_ = conn.Close()
			}(fmt.Sprintf("%s:%d", host, port))
		}
	}
	wg.Wait()
	// give the kernel a moment to collect ARP replies
	time.Sleep(1 * time.Second)
}

// probe checks whether host answers the vendor CoAP status exchange.
func (s *Scanner) probe(ctx context.Context, host string) *FoundDevice {
	connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := s.connect(connCtx, host)
	if err != nil {
		return nil
	}
	defer func() {
		_ = client.Shutdown()
	}()

	statusCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()
	status, err := client.GetStatus(statusCtx)
	if err != nil || len(status) == 0 {
		return nil
	}

	model, _ := airctrl.ExtractModel(status)
	name, _ := airctrl.ExtractName(status)
	s.logger.Info("found device", zap.String("host", host), zap.String("model", model), zap.String("name", name))
	return &FoundDevice{
		Host:   host,
		Model:  model,
		Name:   name,
		Status: status,
	}
}

func (s *Scanner) probeAll(ctx context.Context, hosts []string) []FoundDevice {
	var mu sync.Mutex
	var found []FoundDevice

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxParallelism)
	for _, host := range hosts {
		host := host
		group.Go(func() error {
			if device := s.probe(groupCtx, host); device != nil {
				mu.Lock()
				found = append(found, *device)
				mu.Unlock()
			}
			// probe failures mean "not a purifier", never abort the scan
			return nil
		})
	}
	_ = group.Wait()
	return found
}

// Scan probes the local network and returns every purifier that answered.
func (s *Scanner) Scan(ctx context.Context) ([]FoundDevice, error) {
	localIP, err := LocalIP()
	if err != nil {
		return nil, fmt.Errorf("could not determine local IP: %w", err)
	}
	prefix, ok := networkPrefix(localIP)
	if !ok {
		return nil, fmt.Errorf("not an IPv4 address: %s", localIP)
	}

	s.sweep(prefix)

	arpIPs := make([]string, 0)
	inARP := map[string]bool{}
	for _, ip := range s.arpIPs() {
		if strings.HasPrefix(ip, prefix+".") {
			arpIPs = append(arpIPs, ip)
			inARP[ip] = true
		}
	}

	var found []FoundDevice
	if len(arpIPs) > 0 {
		s.logger.Debug("fast scan", zap.Int("hosts", len(arpIPs)))
		found = s.probeAll(ctx, arpIPs)
	}

	if len(found) == 0 {
		var fallback []string
		for i := 1; i <= fallbackScanEnd; i++ {
			ip := fmt.Sprintf("%s.%d", prefix, i)
			if !inARP[ip] {
				fallback = append(fallback, ip)
			}
		}
		s.logger.Debug("fallback scan", zap.Int("hosts", len(fallback)))
		found = s.probeAll(ctx, fallback)
	}

	s.logger.Info("scan complete", zap.Int("found", len(found)))
	return found, nil
}

func networkPrefix(ip string) (string, bool) {
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return "", false
	}
	return strings.Join(parts[:3], "."), true
}
