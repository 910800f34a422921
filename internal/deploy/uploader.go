// Package deploy copies a freshly built compiler into the CI container.
package deploy

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
)

// ContainerCopier is the subset of the docker client used for uploads
type ContainerCopier interface {
	CopyToContainer(ctx context.Context, containerID, dstPath string, content io.Reader, options types.CopyToContainerOptions) error
}

// Uploader copies a local file to a fixed path inside a container
type Uploader struct {
	copier    ContainerCopier
	closer    io.Closer
	container string
	src       string
	dst       string
}

// NewUploader creates an Uploader on top of an existing copier.
func NewUploader(copier ContainerCopier, container, src, dst string) *Uploader {
	return &Uploader{
		copier:    copier,
		container: container,
		src:       src,
		dst:       dst,
	}
}

// NewDockerUploader connects to the docker daemon configured by the
// environment (DOCKER_HOST etc).
func NewDockerUploader(container, src, dst string) (*Uploader, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	u := NewUploader(cli, container, src, dst)
	u.closer = cli
	return u, nil
}

// Close releases the docker client, if any
func (u *Uploader) Close() error {
	if u.closer != nil {
		return u.closer.Close()
	}
	return nil
}

// Destination returns "container:path" for display.
func (u *Uploader) Destination() string {
	return u.container + ":" + u.dst
}

// Upload is the equivalent of "docker cp src container:dst".
func (u *Uploader) Upload(ctx context.Context) error {
	archive, err := tarFile(u.src, path.Base(u.dst))
	if err != nil {
		return err
	}
	err = u.copier.CopyToContainer(ctx, u.container, path.Dir(u.dst), archive, types.CopyToContainerOptions{})
	if err != nil {
		return fmt.Errorf("copy %s to %s: %w", u.src, u.Destination(), err)
	}
	return nil
}

// tarFile wraps a single file in a tar stream under name, keeping its mode.
func tarFile(src, name string) (io.Reader, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", src)
	}

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	hdr := &tar.Header{
		Name:    name,
		Mode:    int64(info.Mode().Perm()),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return nil, fmt.Errorf("write tar header: %w", err)
	}
	if _, err := io.Copy(tw, f); err != nil {
		return nil, fmt.Errorf("write tar body: %w", err)
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("close tar: %w", err)
	}
	return &buf, nil
}
