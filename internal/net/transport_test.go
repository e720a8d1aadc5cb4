package net

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"MyJournal/internal/sketch"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newMirror(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(nil)
	ts := httptest.NewServer(NewServer("", hub, nil).Handler())
	t.Cleanup(func() {
		hub.Close()
		ts.Client().CloseIdleConnections()
		ts.Close()
	})
	return hub, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f Frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func testSnapshot(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{A: 255})
	s, err := sketch.EncodeSnapshot(img)
	require.NoError(t, err)
	return s
}

func waitForViewers(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Len() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHubBroadcastsSnapshotsAndClears(t *testing.T) {
	hub, ts := newMirror(t)
	conn := dial(t, ts)
	waitForViewers(t, hub, 1)

	snap := testSnapshot(t)
	hub.Publish(snap)
	f := readFrame(t, conn)
	assert.Equal(t, Frame{Type: FrameSnapshot, Data: snap, Revision: 1}, f)

	hub.Publish("")
	f = readFrame(t, conn)
	assert.Equal(t, Frame{Type: FrameCleared, Revision: 2}, f)
}

func TestHubSendsLatestToLateViewer(t *testing.T) {
	hub, ts := newMirror(t)
	snap := testSnapshot(t)
	hub.Publish(snap)

	conn := dial(t, ts)
	f := readFrame(t, conn)
	assert.Equal(t, FrameSnapshot, f.Type)
	assert.Equal(t, snap, f.Data)
}

func TestSnapshotEndpoint(t *testing.T) {
	hub, ts := newMirror(t)
	client := ts.Client()

	resp, err := client.Get(ts.URL + "/snapshot.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	hub.Publish(testSnapshot(t))
	resp, err = client.Get(ts.URL + "/snapshot.png")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	hub.Publish("")
	resp, err = client.Get(ts.URL + "/snapshot.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHealthAndIndex(t *testing.T) {
	_, ts := newMirror(t)
	client := ts.Client()

	resp, err := client.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	resp, err = client.Get(ts.URL + "/")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "/ws")
}

func TestRunPublishesUntilChannelCloses(t *testing.T) {
	hub, ts := newMirror(t)
	conn := dial(t, ts)
	waitForViewers(t, hub, 1)

	snapshots := make(chan string)
	done := make(chan error, 1)
	go func() { done <- hub.Run(context.Background(), snapshots) }()

	snapshots <- testSnapshot(t)
	assert.Equal(t, FrameSnapshot, readFrame(t, conn).Type)

	close(snapshots)
	require.NoError(t, <-done)
	waitForViewers(t, hub, 0)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "viewer is disconnected when the hub closes")
}

func TestRunStopsOnCancel(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.Run(ctx, make(chan string)) }()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	hub.Publish("ignored")
	_, ok := hub.Latest()
	assert.False(t, ok, "closed hub keeps no frames")
}

func TestMirrorURL(t *testing.T) {
	assert.Equal(t, "http://192.168.1.5:8888/", MirrorURL("192.168.1.5", 8888))
	assert.Equal(t, "http://[fe80::1]:80/", MirrorURL("fe80::1", 80))
}

func TestFirstLANIPv4SkipsLoopbackAndIPv6(t *testing.T) {
	addrs := []net.Addr{
		&net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(8, 32)},
		&net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)},
		&net.IPAddr{IP: net.ParseIP("10.0.0.9")},
		&net.IPNet{IP: net.ParseIP("192.168.1.20"), Mask: net.CIDRMask(24, 32)},
	}
	ip, ok := firstLANIPv4(addrs)
	require.True(t, ok)
	assert.Equal(t, "192.168.1.20", ip)

	_, ok = firstLANIPv4(addrs[:2])
	assert.False(t, ok)
}
