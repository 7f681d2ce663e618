// samplemodule runs the sample vision module against a camera or a video
// file, streams the annotated frames to a browser preview, and accepts
// module commands on stdin.
package main

func main() {
	Execute()
}
