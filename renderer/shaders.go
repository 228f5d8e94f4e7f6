// SPDX-License-Identifier: GPL-2.0-or-later

package renderer

const (
	modelVertexSource = `
#version 330
layout (location = 0) in vec3 position;
layout (location = 1) in vec3 color;
layout (location = 2) in vec2 texcoord;
layout (location = 3) in vec3 normal;
out vec3 Color;
out vec2 Texcoord;
out vec3 Normal;
uniform mat4 u_mvp;
uniform mat4 u_world;

void main() {
	Color = color;
	Texcoord = texcoord;
	Normal = mat3(u_world) * normal;
	gl_Position = u_mvp * vec4(position, 1.0);
}
`

	modelFragmentSource = `
#version 330
in vec3 Color;
in vec2 Texcoord;
in vec3 Normal;
out vec4 frag_color;
uniform vec3 u_light_dir;
uniform float u_ambient;

void main() {
	float diffuse = max(dot(normalize(Normal), -u_light_dir), 0.0);
	frag_color = vec4(Color * (u_ambient + (1.0 - u_ambient) * diffuse), 1.0);
}
`

	textVertexSource = `
#version 330
layout (location = 0) in vec2 position;
layout (location = 1) in vec2 texcoord;
out vec2 Texcoord;
uniform mat4 u_mvp;

void main() {
	Texcoord = texcoord;
	gl_Position = u_mvp * vec4(position, 0.0, 1.0);
}
`

	textFragmentSource = `
#version 330
in vec2 Texcoord;
out vec4 frag_color;
uniform sampler2D u_texture;
uniform vec4 u_color;

void main() {
	frag_color = vec4(u_color.rgb, u_color.a * texture(u_texture, Texcoord).r);
}
`
)
