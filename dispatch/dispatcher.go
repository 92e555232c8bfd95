package dispatch

import (
	"context"
	"hash/fnv"
	"net"

	"go.uber.org/zap"

	"lightning-exchange/wire"
)

// maxDatagramSize is sized for the largest SZSE/SSE wire struct plus
// headroom; multicast UDP payloads never approach the IP fragmentation
// threshold in practice for this feed.
const maxDatagramSize = 2048

// Shard is a routing target: a decoded envelope is delivered here for
// exactly one symbol range, keyed by FNV hash so the same symbol always
// lands on the same shard regardless of which multicast group it arrived
// on.
type Shard struct {
	Consumer *EnvelopeConsumer
	ring     *EnvelopeRingBuffer
}

// NewShard creates a shard-local envelope queue.
func NewShard(queueSize int) *Shard {
	ring := NewEnvelopeRingBuffer(queueSize)
	return &Shard{Consumer: ring.NewConsumer(), ring: ring}
}

// ChannelDispatcher joins one multicast group per configured address,
// decodes each datagram per its exchange dialect, and routes the
// resulting envelope to a booker shard by hashing the symbol. This
// mirrors the one-receiver-thread-per-multicast-address design the
// upstream market-data client uses, generalized from a fixed symbol
// array to a hash-routed shard count chosen at startup.
type ChannelDispatcher struct {
	log    *zap.Logger
	shards []*Shard
	ids    *tagGenerator
}

// Group describes one multicast feed to join.
type Group struct {
	Address  string // "ip:port"
	Exchange wire.Exchange
}

// NewChannelDispatcher creates a dispatcher that will route decoded
// envelopes across shardCount shards.
func NewChannelDispatcher(log *zap.Logger, shardCount, queueSize int) *ChannelDispatcher {
	shards := make([]*Shard, shardCount)
	for i := range shards {
		shards[i] = NewShard(queueSize)
	}
	return &ChannelDispatcher{log: log.Named("dispatcher"), shards: shards, ids: newTagGenerator()}
}

// Shards returns the shard queues, in routing order, for callers to spin
// up one booker-shard consumer goroutine per entry.
func (d *ChannelDispatcher) Shards() []*Shard {
	return d.shards
}

// ShardFor returns the shard a given symbol routes to, for callers that
// need to address a specific symbol's queue directly (e.g. tests).
func (d *ChannelDispatcher) ShardFor(symbol string) *Shard {
	return d.shards[symbolHash(symbol)%uint32(len(d.shards))]
}

// Join starts one receiver goroutine per group and blocks until ctx is
// canceled. Each receiver decodes inline on its own goroutine so a slow
// or malformed feed on one multicast address never delays another.
func (d *ChannelDispatcher) Join(ctx context.Context, groups []Group, ifaceAddr string) error {
	conns := make([]*net.UDPConn, 0, len(groups))
	for _, g := range groups {
		conn, err := d.joinGroup(g, ifaceAddr)
		if err != nil {
			for _, c := range conns {
				c.Close()
			}
			return err
		}
		conns = append(conns, conn)
		go d.receive(ctx, conn, g)
	}

	<-ctx.Done()
	for _, c := range conns {
		c.Close()
	}
	return nil
}

func (d *ChannelDispatcher) joinGroup(g Group, ifaceAddr string) (*net.UDPConn, error) {
	addr, err := net.ResolveUDPAddr("udp4", g.Address)
	if err != nil {
		return nil, err
	}

	var iface *net.Interface
	if ifaceAddr != "" {
		iface, err = interfaceForAddr(ifaceAddr)
		if err != nil {
			return nil, err
		}
	}

	conn, err := net.ListenMulticastUDP("udp4", iface, addr)
	if err != nil {
		return nil, err
	}
	conn.SetReadBuffer(8 << 20)
	return conn, nil
}

func (d *ChannelDispatcher) receive(ctx context.Context, conn *net.UDPConn, g Group) {
	buf := make([]byte, maxDatagramSize)
	tag := d.ids.next()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := conn.Read(buf)
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			d.log.Warn("multicast read failed", zap.String("receiver", tag), zap.String("address", g.Address), zap.Error(err))
			continue
		}

		env, err := wire.Decode(g.Exchange, buf[:n])
		if err != nil {
			d.log.Warn("decode failed", zap.String("receiver", tag), zap.String("address", g.Address), zap.Error(err))
			continue
		}

		shard := d.ShardFor(env.Symbol)
		shard.ring.Publish(env)
	}
}

func interfaceForAddr(addr string) (*net.Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	for i := range ifaces {
		addrs, err := ifaces[i].Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ipNet, ok := a.(*net.IPNet)
			if ok && ipNet.IP.String() == addr {
				return &ifaces[i], nil
			}
		}
	}
	return nil, &net.AddrError{Err: "no interface with address", Addr: addr}
}

func symbolHash(symbol string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	return h.Sum32()
}
