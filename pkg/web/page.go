package web

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Module preview</title>
<style>
body { background: #111; color: #ddd; font-family: monospace; margin: 1em; }
#video { border: 1px solid #444; max-width: 100%; }
#serial { height: 12em; overflow-y: auto; background: #000; padding: .5em; white-space: pre; }
input { width: 40em; background: #222; color: #ddd; border: 1px solid #444; }
</style>
</head>
<body>
<img id="video" alt="waiting for frames">
<div id="serial"></div>
<input id="cmd" placeholder="command, e.g. hello or setpar serout All">
<script>
const proto = location.protocol === "https:" ? "wss://" : "ws://";
const video = new WebSocket(proto + location.host + "/ws/video");
video.binaryType = "blob";
let last = null;
video.onmessage = (ev) => {
  if (last) URL.revokeObjectURL(last);
  last = URL.createObjectURL(ev.data);
  document.getElementById("video").src = last;
};
const out = document.getElementById("serial");
const serial = new WebSocket(proto + location.host + "/ws/serial");
serial.onmessage = (ev) => {
  out.textContent += ev.data + "\n";
  out.scrollTop = out.scrollHeight;
};
document.getElementById("cmd").addEventListener("keydown", (ev) => {
  if (ev.key === "Enter" && ev.target.value) {
    serial.send(ev.target.value);
    ev.target.value = "";
  }
});
</script>
</body>
</html>
`
