package socket

import (
	"fmt"
	"net"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// CreateServerSocket creates a TCP socket bound to addr:port and listening
// with the given backlog, then hands it to the runtime poller as a
// net.Listener. Port 0 picks a free port.
func CreateServerSocket(addr string, port int, backlog int) (net.Listener, error) {
	ip := net.ParseIP(addr).To4()
	if ip == nil {
		return nil, fmt.Errorf("socket error: %q is not an IPv4 address", addr)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, fmt.Errorf("socket error: %w", err)
	}
	unix.CloseOnExec(fd)

	// allow socket reuse to avoid "address already in use" issues
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("setsockopt error: %w", err)
	}

	sa := &unix.SockaddrInet4{Port: port}
	copy(sa.Addr[:], ip)
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("bind error: %w", err)
	}

	if backlog <= 0 {
		backlog = unix.SOMAXCONN
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("listen error: %w", err)
	}

	// FileListener dups the descriptor, so the original is closed either way
	f := os.NewFile(uintptr(fd), fmt.Sprintf("tcp:%s:%d", addr, port))
	defer f.Close()

	ln, err := net.FileListener(f)
	if err != nil {
		return nil, fmt.Errorf("listener error: %w", err)
	}
	return ln, nil
}

// SetClientOptions applies per-connection socket options to an accepted
// connection. Connections without a raw descriptor are left untouched.
func SetClientOptions(conn net.Conn) error {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return nil
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return err
	}

	var optErr error
	err = raw.Control(func(fd uintptr) {
		// send packets immediately upon write
		if err := unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1); err != nil {
			optErr = fmt.Errorf("setsockopt TCP_NODELAY on fd %d: %w", fd, err)
		}
	})
	if err != nil {
		return err
	}
	return optErr
}
