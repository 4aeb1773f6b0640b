package server

import (
	"net"
	"sync"

	"github.com/arnavsood/lumendb/internal/wire"
)

// Peer wraps a connected client's net.Conn with the wire codec, guarding the
// writer so replies from concurrent Send calls never interleave.
type Peer struct {
	conn   net.Conn
	reader *wire.Decoder
	writer *wire.Encoder
	mu     sync.Mutex
}

// NewPeer builds a Peer around an accepted connection.
func NewPeer(conn net.Conn) *Peer {
	return &Peer{
		conn:   conn,
		reader: wire.NewDecoder(conn),
		writer: wire.NewEncoder(conn),
	}
}

// ReadCommand reads and tokenizes the next request line.
func (p *Peer) ReadCommand() ([]string, error) {
	return p.reader.ReadCommand()
}

// Send encodes and flushes a reply to the client.
func (p *Peer) Send(v wire.Value) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writer.Write(v)
}

// SendNoFlush buffers a reply without flushing, for pipelined batches.
func (p *Peer) SendNoFlush(v wire.Value) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writer.WriteNoFlush(v)
}

// Flush sends any buffered replies.
func (p *Peer) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writer.Flush()
}

// InputBuffered reports bytes already read into the decoder's buffer, used
// to decide whether more pipelined requests are waiting before flushing.
func (p *Peer) InputBuffered() int {
	return p.reader.Buffered()
}

// Close terminates the underlying connection.
func (p *Peer) Close() error {
	return p.conn.Close()
}

// RemoteAddr reports the client's address for logging.
func (p *Peer) RemoteAddr() net.Addr {
	return p.conn.RemoteAddr()
}
