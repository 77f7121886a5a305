package server

import "html/template"

type pageData struct {
	TriggerKey string
}

// indexPage turns the trigger key of any browser, phones included, into
// /input calls and draws every frame pushed on /events.
var indexPage = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head>
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>rhythmdex</title>
<style>
body { font-family: sans-serif; margin: 2em; }
#pad { width: 100%; height: 30vh; background: #ddd; border-radius: 1em; touch-action: none; }
#pad.down { background: #9c9; }
#beat { font-size: 2em; height: 1.2em; }
canvas { border: 1px solid #ccc; margin: 1em 0; max-width: 100%; }
</style>
</head>
<body>
<p id="message">Welcome to this rhythm training. Hit {{.TriggerKey}} to start.</p>
<p id="hint"></p>
<div id="beat"></div>
<canvas id="tracks" width="500" height="70"></canvas>
<div id="pad"></div>
<script>
const trigger = {{.TriggerKey}};
const pad = document.getElementById("pad");
const canvas = document.getElementById("tracks");
let down = false;

function keyName(e) {
  if (e.key === " ") { return "space"; }
  return e.key.toLowerCase();
}
function send(type) {
  fetch("/input", {method: "POST", body: JSON.stringify({key: trigger, type: type})});
}
function press() { if (!down) { down = true; pad.className = "down"; send("press"); } }
function release() { if (down) { down = false; pad.className = ""; send("release"); } }

document.addEventListener("keydown", e => {
  if (keyName(e) === trigger) { e.preventDefault(); if (!e.repeat) { press(); } }
});
document.addEventListener("keyup", e => {
  if (keyName(e) === trigger) { e.preventDefault(); release(); }
});
pad.addEventListener("pointerdown", press);
pad.addEventListener("pointerup", release);

function drawTrack(ctx, segments, y, scale) {
  (segments || []).forEach(s => {
    ctx.fillStyle = s.color;
    ctx.fillRect(s.x * scale, y, Math.max(s.width * scale - 2, 1), 25);
  });
}
function draw(frame) {
  const ctx = canvas.getContext("2d");
  if (!frame) { return; }
  ctx.clearRect(0, 0, canvas.width, canvas.height);
  const scale = canvas.width / frame.width;
  drawTrack(ctx, frame.expected, 5, scale);
  drawTrack(ctx, frame.recorded, 40, scale);
}

new EventSource("/events").addEventListener("frame", e => {
  const ev = JSON.parse(e.data);
  document.getElementById("message").textContent = ev.snapshot.message;
  document.getElementById("hint").textContent = ev.snapshot.hint || "";
  document.getElementById("beat").textContent = ev.snapshot.beat >= 0 ? String(ev.snapshot.beat + 1) : "";
  draw(ev.frame);
});
</script>
</body>
</html>
`))
